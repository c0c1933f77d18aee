package nutypes

// PipelineData is what flows into and out of a command invocation: either a
// single value or nothing at all.
type PipelineData struct {
	value *Value
}

// EmptyPipeline returns pipeline data carrying no value.
func EmptyPipeline() PipelineData {
	return PipelineData{}
}

// PipelineValue wraps a value.
func PipelineValue(v Value) PipelineData {
	return PipelineData{value: &v}
}

// IsEmpty reports whether no value is carried.
func (p PipelineData) IsEmpty() bool {
	return p.value == nil
}

// Type is the type of the carried value, Nothing when empty.
func (p PipelineData) Type() Type {
	if p.value == nil {
		return TypeNothing
	}
	return p.value.Type()
}

// IntoValue unwraps the carried value; empty data yields Nothing.
func (p PipelineData) IntoValue() Value {
	if p.value == nil {
		return NewNothing()
	}
	return *p.value
}
