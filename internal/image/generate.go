package image

import "context"

type Parameters struct {
	Height            int     `json:"height"`
	Width             int     `json:"width"`
	GuidanceScale     float64 `json:"guidance_scale"`
	NumInferenceSteps int     `json:"num_inference_steps"`
}

// DefaultParameters are the fixed generation settings sent with every prompt.
func DefaultParameters() Parameters {
	return Parameters{
		Height:            512,
		Width:             512,
		GuidanceScale:     3.5,
		NumInferenceSteps: 28,
	}
}

type Params struct {
	Inputs     string     `json:"inputs"`
	Parameters Parameters `json:"parameters"`
}

type Generator interface {
	Generate(context.Context, string, Params) (*Image, error)
}
