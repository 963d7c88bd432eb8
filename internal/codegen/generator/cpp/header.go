package cpp

// headerTemplate renders one .generated.hpp. Bodies arrive already rewritten
// and indented by the template functions.
const headerTemplate = `// AUTO-GENERATED from {{.Source}} - DO NOT EDIT
#pragma once

{{range .Includes}}#include {{.}}
{{end}}
{{range .Dependencies}}#include "{{.}}"
{{end}}{{if .Dependencies}}
{{end}}#ifndef {{.HelperGuard}}
#define {{.HelperGuard}}
namespace {{.Namespace}}
{
    inline auto PACK_BITS(uint32_t numBits, uint32_t offset, uint32_t value, uint32_t field) -> uint32_t
    {
        if (numBits == 0)
        {
            return value;
        }
        auto const fieldMask = numBits >= 32 ? 0xffffffffu : ((1u << numBits) - 1u);
        auto const mask = fieldMask << offset;
        return (value & ~mask) | ((field << offset) & mask);
    }

    inline auto PACK_BITS_UNSAFE(uint32_t numBits, uint32_t offset, uint32_t value, uint32_t field) -> uint32_t
    {
        return PACK_BITS(numBits, offset, value, field);
    }

    inline auto EXTRACT_BITS(uint32_t numBits, uint32_t offset, uint32_t value) -> uint32_t
    {
        if (numBits == 0)
        {
            return 0u;
        }
        auto const fieldMask = numBits >= 32 ? 0xffffffffu : ((1u << numBits) - 1u);
        return (value >> offset) & fieldMask;
    }

    inline auto IS_BIT_SET(uint32_t value, uint32_t bit) -> bool
    {
        return (value & (1u << bit)) != 0u;
    }

    inline auto asuint16(float value) -> uint16_t
    {
        auto const packed = glm::packHalf2x16(float2(value, 0.0f));
        return static_cast<uint16_t>(packed & 0xffffu);
    }

    inline auto asfloat16(uint16_t value) -> float
    {
        auto const unpacked = glm::unpackHalf2x16(static_cast<uint32_t>(value));
        return unpacked.x;
    }

    struct float16_t
    {
        uint16_t bits{0};

        float16_t() = default;
        float16_t(float value)
            : bits(asuint16(value))
        {
        }

        auto operator=(float value) -> float16_t&
        {
            bits = asuint16(value);
            return *this;
        }

        operator float() const
        {
            return asfloat16(bits);
        }
    };

    struct float16_t2
    {
        uint16_t x{0};
        uint16_t y{0};

        float16_t2() = default;
        float16_t2(float value)
            : x(asuint16(value))
            , y(asuint16(value))
        {
        }
        float16_t2(float2 const& value)
            : x(asuint16(value.x))
            , y(asuint16(value.y))
        {
        }

        auto operator=(float2 const& value) -> float16_t2&
        {
            x = asuint16(value.x);
            y = asuint16(value.y);
            return *this;
        }

        operator float2() const
        {
            return float2(asfloat16(x), asfloat16(y));
        }
    };

    struct float16_t3
    {
        uint16_t x{0};
        uint16_t y{0};
        uint16_t z{0};

        float16_t3() = default;
        float16_t3(float value)
            : x(asuint16(value))
            , y(asuint16(value))
            , z(asuint16(value))
        {
        }
        float16_t3(float3 const& value)
            : x(asuint16(value.x))
            , y(asuint16(value.y))
            , z(asuint16(value.z))
        {
        }

        auto operator=(float3 const& value) -> float16_t3&
        {
            x = asuint16(value.x);
            y = asuint16(value.y);
            z = asuint16(value.z);
            return *this;
        }

        operator float3() const
        {
            return float3(asfloat16(x), asfloat16(y), asfloat16(z));
        }
    };

    struct float16_t4
    {
        uint16_t x{0};
        uint16_t y{0};
        uint16_t z{0};
        uint16_t w{0};

        float16_t4() = default;
        float16_t4(float value)
            : x(asuint16(value))
            , y(asuint16(value))
            , z(asuint16(value))
            , w(asuint16(value))
        {
        }
        float16_t4(float4 const& value)
            : x(asuint16(value.x))
            , y(asuint16(value.y))
            , z(asuint16(value.z))
            , w(asuint16(value.w))
        {
        }

        auto operator=(float4 const& value) -> float16_t4&
        {
            x = asuint16(value.x);
            y = asuint16(value.y);
            z = asuint16(value.z);
            w = asuint16(value.w);
            return *this;
        }

        operator float4() const
        {
            return float4(asfloat16(x), asfloat16(y), asfloat16(z), asfloat16(w));
        }
    };

    inline auto asuint16(float16_t value) -> uint16_t
    {
        return value.bits;
    }
} // namespace {{.Namespace}}
#endif

namespace {{.Namespace}}
{
{{range .File.Constants}}    inline constexpr {{cpptype .Type}} {{.Alias}} = {{expr .Value}};
{{end}}{{if .File.Constants}}
{{end}}{{range .File.Enums}}    enum class {{.Alias}} : {{backing .BackingType}}
    {
{{with indent 8 (expr .Body)}}{{.}}
{{end}}    };
{{if .IsFlags}}    {{$.FlagMacro}}({{.Alias}});
{{end}}
{{end}}{{range .File.Structs}}{{layoutComment .Name}}    struct alignas({{alignment}}) {{.Alias}}
    {
{{with body .Body .Alias}}{{indent 8 .}}
{{end}}    };
{{sizeAssert .Name .Alias}}
{{end}}} // namespace {{.Namespace}}
`
