package purfectconsole

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff8000", TrueColor(255, 128, 0)},
		{"#FFF", TrueColor(255, 255, 255)},
		{" #0a0B0c ", TrueColor(10, 11, 12)},
		{"red", StandardColor(1)},
		{"Bright-Cyan", StandardColor(14)},
		{"grey", StandardColor(8)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345g", "chartreuse", "ff0000"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestColorHexAndText(t *testing.T) {
	c := TrueColor(1, 171, 255)
	assert.Equal(t, "#01ABFF", c.ToHex())
	assert.Equal(t, "#01ABFF", c.String())

	text, err := c.MarshalText()
	require.NoError(t, err)
	var back Color
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, c, back)

	assert.Error(t, back.UnmarshalText([]byte("nope")))
}

func TestColorSGR(t *testing.T) {
	assert.Equal(t, "31", StandardColor(1).ToSGRCode(true))
	assert.Equal(t, "104", StandardColor(12).ToSGRCode(false))
	assert.Equal(t, "38;2;1;2;3", TrueColor(1, 2, 3).ToSGRCode(true))
	assert.Equal(t, "49", DefaultBackground.ToSGRCode(false))
	assert.True(t, DefaultForeground.IsDefault())
	assert.Equal(t, StandardColor(7), StandardColor(99))
}

func TestParseFontStyle(t *testing.T) {
	for in, want := range map[string]FontStyle{
		"": FontPlain, "Plain": FontPlain, "bold": FontBold,
		"italic": FontItalic, "bold-italic": FontBoldItalic, "Bold Italic": FontBoldItalic,
	} {
		got, err := ParseFontStyle(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFontStyle("oblique")
	assert.Error(t, err)
	assert.Equal(t, "bold-italic", FontBoldItalic.String())
}

func TestRequestSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"fits", 800, 600, 800, 600},
		{"unset", 0, -1, 1440, 810},
		{"too large", 5000, 1075, 1910, 1070},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := RequestSize(tt.w, tt.h, 1920, 1080)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{FontSize: 20, FontColor: TrueColor(0, 0, 0)}.WithDefaults()
	assert.Equal(t, 20, o.FontSize)
	assert.Equal(t, TrueColor(0, 0, 0), o.FontColor)
	assert.Equal(t, TrueColor(0, 0, 0), o.BackgroundColor)
	assert.Equal(t, 8, o.TabSize)
	assert.False(t, o.Resizable)
	assert.True(t, DefaultOptions().Resizable)
}
