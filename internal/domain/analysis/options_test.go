package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

func TestDefaultOptions_Valid(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
}

func TestNormalize_FillsDefaults(t *testing.T) {
	o := Options{}.Normalize()
	assert.Equal(t, DefaultOptions(), o)
}

func TestNormalize_GridBox(t *testing.T) {
	o := Options{BindingSiteMethod: BindingSiteGridBox}.Normalize()
	require.NotNil(t, o.GridBox)
	assert.Equal(t, DefaultGridBox(), *o.GridBox)

	gb := GridBox{SizeX: 1, SizeY: 1, SizeZ: 1}
	o = Options{BindingSiteMethod: BindingSiteAuto, GridBox: &gb}.Normalize()
	assert.Nil(t, o.GridBox)
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	cases := map[string]func(*Options){
		"binding_site_method": func(o *Options) { o.BindingSiteMethod = "magic" },
		"conformation":        func(o *Options) { o.Conformation = "folded" },
		"desired_effect":      func(o *Options) { o.DesiredEffect = "cure" },
		"population":          func(o *Options) { o.Population = "100+" },
		"route":               func(o *Options) { o.Route = "nasal" },
		"design_method":       func(o *Options) { o.DesignMethod = "guess" },
		"count_range":         func(o *Options) { o.CountRange = "3" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			o := DefaultOptions()
			mutate(&o)
			err := o.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidAnalysisOption))
			assert.Contains(t, err.Error(), field+"=")
		})
	}
}

func TestValidate_GridBoxSizes(t *testing.T) {
	o := DefaultOptions()
	o.BindingSiteMethod = BindingSiteGridBox
	o.GridBox = &GridBox{SizeX: 20, SizeY: 0, SizeZ: 20}
	assert.Error(t, o.Validate())
}

func TestChoices(t *testing.T) {
	c := Choices()
	assert.Equal(t, []string{"1-5", "5-10", "10-50", "50-100"}, c["count_range"])
	assert.Len(t, c["route"], 7)
	assert.Len(t, c["population"], 7)
	assert.Contains(t, c["design_method"], "genetic_algorithm")
}
