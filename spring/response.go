package spring

// Sample is one point of a step response.
type Sample struct {
	Time     float64 `csv:"time"`
	Value    float64 `csv:"value"`
	Velocity float64 `csv:"velocity"`
}

// Response runs a scalar tracker from rest at 0 toward a target of 1 for
// steps fixed steps of dt and returns every sample, starting with t=0.
func Response(p Params, dt float64, steps int) []Sample {
	var s Float
	out := make([]Sample, 0, steps+1)
	out = append(out, Sample{})
	for i := 1; i <= steps; i++ {
		s.Track(1, p, dt)
		out = append(out, Sample{
			Time:     float64(i) * dt,
			Value:    s.Value(),
			Velocity: s.Velocity(),
		})
	}
	return out
}
