package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uidlc/uidl"
)

func inl(styles uidl.StyleMap, conds ...uidl.Condition) *uidl.InlinedStyle {
	return &uidl.InlinedStyle{Conditions: conds, Styles: styles}
}

func TestMerge_BaseFirst(t *testing.T) {
	groups := Merge(
		uidl.Styles("width", "100px"),
		[]*uidl.InlinedStyle{
			inl(uidl.Styles("display", "none"), uidl.MaxWidth(991)),
			inl(uidl.Styles("height", "10px")),
		})

	require.Len(t, groups, 2)
	assert.True(t, groups[0].IsBase())
	assert.Equal(t, uidl.Styles("width", "100px", "height", "10px"), groups[0].Styles)
	assert.Equal(t, "media(,max=991)", groups[1].Key())
	assert.Equal(t, uidl.Styles("display", "none"), groups[1].Styles)
}

func TestMerge_BaseFromInlinedOnly(t *testing.T) {
	groups := Merge(nil, []*uidl.InlinedStyle{
		inl(uidl.Styles("color", "red"), uidl.State("hover")),
		inl(uidl.Styles("color", "blue")),
	})

	require.Len(t, groups, 2)
	assert.True(t, groups[0].IsBase(), "unconditioned group must come first even when seen later")
	assert.Equal(t, "state(hover)", groups[1].Key())
}

func TestMerge_OverrideKeepsPosition(t *testing.T) {
	groups := Merge(nil, []*uidl.InlinedStyle{
		inl(uidl.Styles("display", "none", "color", "red"), uidl.MaxWidth(600)),
		inl(uidl.Styles("margin", "0"), uidl.State("hover")),
		inl(uidl.Styles("color", "blue", "padding", "4px"), uidl.MaxWidth(600)),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, uidl.Styles("display", "none", "color", "blue", "padding", "4px"), groups[0].Styles)
	assert.Equal(t, uidl.Styles("margin", "0"), groups[1].Styles)
}

func TestMerge_DistinctKeys(t *testing.T) {
	groups := Merge(nil, []*uidl.InlinedStyle{
		inl(uidl.Styles("a", "1"), uidl.MaxWidth(600)),
		inl(uidl.Styles("b", "2"), uidl.MinWidth(600)),
		inl(uidl.Styles("c", "3"), uidl.WidthRange(300, 600)),
		inl(uidl.Styles("d", "4"), uidl.MaxWidth(600), uidl.State("hover")),
	})

	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key())
	}
	assert.Equal(t, []string{
		"media(,max=600)",
		"media(min=600,)",
		"media(min=300,max=600)",
		"media(,max=600)|state(hover)",
	}, keys)
}

func TestMerge_CompoundConditionOrder(t *testing.T) {
	groups := Merge(nil, []*uidl.InlinedStyle{
		inl(uidl.Styles("color", "red", "margin", "0"), uidl.MaxWidth(991), uidl.State("hover")),
		inl(uidl.Styles("color", "blue"), uidl.State("hover"), uidl.MaxWidth(991)),
	})

	require.Len(t, groups, 1, "same conditions in different order are one group")
	assert.Equal(t, "media(,max=991)|state(hover)", groups[0].Key())
	assert.Equal(t, uidl.Styles("color", "blue", "margin", "0"), groups[0].Styles)
}

func TestMerge_DropsEmptyAndDynamic(t *testing.T) {
	direct := uidl.StyleMap{{Property: "color", Value: uidl.DynamicValue(uidl.RefProp, "color")}}
	groups := Merge(direct, []*uidl.InlinedStyle{nil, inl(nil, uidl.State("focus"))})
	assert.Empty(t, groups)
}
