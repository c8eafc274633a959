package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Green Tea":             "green-tea",
		"  Rooibos Crème ":      "rooibos-creme",
		"Earl Grey -- Special!": "earl-grey-special",
		"日本茶 Sencha":            "sencha",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), in)
	}
}
