package graph

type passthroughUnit struct {
	gain float32
}

func (p *passthroughUnit) Inputs() int  { return 1 }
func (p *passthroughUnit) Outputs() int { return 1 }
func (p *passthroughUnit) TypeID() uint64 { return 1 }
func (p *passthroughUnit) Tick(input, output []float32) {
	output[0] = input[0] * p.gain
}
func (p *passthroughUnit) Process(frames int, input, output [][]float32) {
	for i := 0; i < frames; i++ {
		output[0][i] = input[0][i] * p.gain
	}
}
func (p *passthroughUnit) Reset()                        {}
func (p *passthroughUnit) SetSampleRate(sampleRate float64) {}
func (p *passthroughUnit) Route(inputLatencies []int) []int {
	return inputLatencies
}
func (p *passthroughUnit) Footprint() int { return 16 }

type oscUnit struct {
	value float32
}

func (o *oscUnit) Inputs() int    { return 0 }
func (o *oscUnit) Outputs() int   { return 1 }
func (o *oscUnit) TypeID() uint64 { return 2 }
func (o *oscUnit) Tick(input, output []float32) {
	output[0] = o.value
}
func (o *oscUnit) Process(frames int, input, output [][]float32) {
	for i := 0; i < frames; i++ {
		output[0][i] = o.value
	}
}
func (o *oscUnit) Reset()                          {}
func (o *oscUnit) SetSampleRate(sampleRate float64) {}
func (o *oscUnit) Route(inputLatencies []int) []int { return []int{0} }
func (o *oscUnit) Footprint() int                   { return 8 }
