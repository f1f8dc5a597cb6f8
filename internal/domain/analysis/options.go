// Package analysis models a submitted design run: the options the user picked,
// the uploaded target, and how many candidates the run delivers.  Like the
// candidate package it performs no I/O.
package analysis

import (
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// BindingSiteMethod selects how the binding pocket is located.
type BindingSiteMethod string

const (
	BindingSiteAuto            BindingSiteMethod = "auto_pocket"
	BindingSiteGridBox         BindingSiteMethod = "grid_box"
	BindingSiteReferenceLigand BindingSiteMethod = "reference_ligand"
	BindingSiteResidueList     BindingSiteMethod = "residue_list"
)

// Conformation is the target conformation the design is aimed at.
type Conformation string

const (
	ConformationActive     Conformation = "active"
	ConformationInactive   Conformation = "inactive"
	ConformationUnknown    Conformation = "unknown"
	ConformationAllosteric Conformation = "allosteric_modulator"
)

// Effect is the desired pharmacological effect.
type Effect string

const (
	EffectAgonist    Effect = "agonist"
	EffectAntagonist Effect = "antagonist"
	EffectModulator  Effect = "modulator"
	EffectAllosteric Effect = "allosteric_modulator"
	EffectUnknown    Effect = "unknown"
)

// Population is the target patient age group.
type Population string

const (
	PopulationInfant     Population = "0-2"
	PopulationPaediatric Population = "2-18"
	PopulationAdult      Population = "18-45"
	PopulationMiddleAge  Population = "45-65"
	PopulationSenior     Population = "65-85"
	PopulationElderly    Population = "85+"
	PopulationUnknown    Population = "unknown"
)

// Route is the administration route.
type Route string

const (
	RouteOral          Route = "oral"
	RouteIntravenous   Route = "intravenous"
	RouteIntramuscular Route = "intramuscular"
	RouteInhalation    Route = "inhalation"
	RouteDermal        Route = "dermal"
	RouteSubcutaneous  Route = "subcutaneous"
	RouteOther         Route = "other"
)

// DesignMethod is the de novo generation strategy the user asked for.
type DesignMethod string

const (
	DesignFragmentBased       DesignMethod = "fragment_based"
	DesignSMILESGenerative    DesignMethod = "smiles_generative"
	DesignGeneticAlgorithm    DesignMethod = "genetic_algorithm"
	DesignLigandGrowing       DesignMethod = "ligand_growing"
	DesignReactionEnumeration DesignMethod = "reaction_enumeration"
)

var (
	bindingSiteMethods = []BindingSiteMethod{BindingSiteAuto, BindingSiteGridBox, BindingSiteReferenceLigand, BindingSiteResidueList}
	conformations      = []Conformation{ConformationActive, ConformationInactive, ConformationUnknown, ConformationAllosteric}
	effects            = []Effect{EffectAgonist, EffectAntagonist, EffectModulator, EffectAllosteric, EffectUnknown}
	populations        = []Population{PopulationInfant, PopulationPaediatric, PopulationAdult, PopulationMiddleAge, PopulationSenior, PopulationElderly, PopulationUnknown}
	routes             = []Route{RouteOral, RouteIntravenous, RouteIntramuscular, RouteInhalation, RouteDermal, RouteSubcutaneous, RouteOther}
	designMethods      = []DesignMethod{DesignFragmentBased, DesignSMILESGenerative, DesignGeneticAlgorithm, DesignLigandGrowing, DesignReactionEnumeration}
)

// GridBox is the docking search box in Ångström.  Only meaningful when the
// binding-site method is grid_box.
type GridBox struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	CenterZ float64 `json:"center_z"`
	SizeX   float64 `json:"size_x"`
	SizeY   float64 `json:"size_y"`
	SizeZ   float64 `json:"size_z"`
}

// DefaultGridBox is centred on the origin with 20 Å edges.
func DefaultGridBox() GridBox {
	return GridBox{SizeX: 20, SizeY: 20, SizeZ: 20}
}

// Options are the run parameters collected before submission.  None of them
// influence the returned results.
type Options struct {
	BindingSiteMethod BindingSiteMethod `json:"binding_site_method"`
	GridBox           *GridBox          `json:"grid_box,omitempty"`
	BlindDocking      bool              `json:"blind_docking"`
	Conformation      Conformation      `json:"conformation"`
	DesiredEffect     Effect            `json:"desired_effect"`
	Population        Population        `json:"population"`
	Route             Route             `json:"route"`
	DesignMethod      DesignMethod      `json:"design_method"`
	CountRange        CountRange        `json:"count_range"`
}

// DefaultOptions mirrors the first entry of every selector.
func DefaultOptions() Options {
	return Options{
		BindingSiteMethod: BindingSiteAuto,
		Conformation:      ConformationActive,
		DesiredEffect:     EffectAgonist,
		Population:        PopulationInfant,
		Route:             RouteOral,
		DesignMethod:      DesignFragmentBased,
		CountRange:        CountRange1To5,
	}
}

// Normalize fills empty selectors with their defaults and attaches the
// default grid box when the grid_box method is chosen without one.
func (o Options) Normalize() Options {
	d := DefaultOptions()
	if o.BindingSiteMethod == "" {
		o.BindingSiteMethod = d.BindingSiteMethod
	}
	if o.Conformation == "" {
		o.Conformation = d.Conformation
	}
	if o.DesiredEffect == "" {
		o.DesiredEffect = d.DesiredEffect
	}
	if o.Population == "" {
		o.Population = d.Population
	}
	if o.Route == "" {
		o.Route = d.Route
	}
	if o.DesignMethod == "" {
		o.DesignMethod = d.DesignMethod
	}
	if o.CountRange == "" {
		o.CountRange = d.CountRange
	}
	if o.BindingSiteMethod == BindingSiteGridBox && o.GridBox == nil {
		gb := DefaultGridBox()
		o.GridBox = &gb
	}
	if o.BindingSiteMethod != BindingSiteGridBox {
		o.GridBox = nil
	}
	return o
}

// Validate checks every selector against its enumerated values.
func (o Options) Validate() error {
	if !oneOf(o.BindingSiteMethod, bindingSiteMethods) {
		return invalidOption("binding_site_method", string(o.BindingSiteMethod))
	}
	if !oneOf(o.Conformation, conformations) {
		return invalidOption("conformation", string(o.Conformation))
	}
	if !oneOf(o.DesiredEffect, effects) {
		return invalidOption("desired_effect", string(o.DesiredEffect))
	}
	if !oneOf(o.Population, populations) {
		return invalidOption("population", string(o.Population))
	}
	if !oneOf(o.Route, routes) {
		return invalidOption("route", string(o.Route))
	}
	if !oneOf(o.DesignMethod, designMethods) {
		return invalidOption("design_method", string(o.DesignMethod))
	}
	if _, err := ParseCountRange(string(o.CountRange)); err != nil {
		return err
	}
	if gb := o.GridBox; gb != nil {
		if !(gb.SizeX > 0 && gb.SizeY > 0 && gb.SizeZ > 0) {
			return invalidOption("grid_box", "sizes must be positive")
		}
	}
	return nil
}

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func invalidOption(field, value string) error {
	return errors.New(errors.ErrCodeInvalidAnalysisOption, "invalid analysis option").
		WithDetail(field + "=" + value)
}

// Choices lists the accepted values of every selector, keyed by field name.
func Choices() map[string][]string {
	return map[string][]string{
		"binding_site_method": toStrings(bindingSiteMethods),
		"conformation":        toStrings(conformations),
		"desired_effect":      toStrings(effects),
		"population":          toStrings(populations),
		"route":               toStrings(routes),
		"design_method":       toStrings(designMethods),
		"count_range":         toStrings(countRanges),
	}
}

func toStrings[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

//Personal.AI order the ending
