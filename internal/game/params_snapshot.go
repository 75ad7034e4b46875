package game

import (
	"strconv"

	"gen-ca/internal/core"
	"gen-ca/internal/rule"
)

// Parameters reports the controller's settings and counters for display.
func (c *Controller) Parameters() core.ParameterSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.stateLocked()

	ruleSummary := "custom"
	if name, ok := rule.NameOf(c.rule); ok {
		ruleSummary = name
	}
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", st.Columns),
				intParam("h", "Height", st.Rows),
				stringParam("edge", "Edge", st.Edge),
			},
		},
		{
			Name:    "Rule",
			Summary: ruleSummary,
			Params: []core.Parameter{
				stringParam("rule", "Rule", st.Rule),
				intParam("cycle", "States", max(c.rule.Cycle, 2)),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("generation", "Generation", st.Generation),
				intParam("population", "Population", st.Population),
				intParam("speed", "Speed", st.Speed),
				boolParam("autostop", "Auto-stop", st.AutoStop),
				boolParam("running", "Running", st.Running),
				int64Param("seed", "Seed", c.seed),
				floatParam("density", "Density", c.density),
				stringParam("area", "Areas", strconv.Itoa(c.area.Columns()-1)+"x"+strconv.Itoa(c.area.Rows()-1)),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
