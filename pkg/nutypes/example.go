package nutypes

// Example documents one invocation of a command. A nil Result means the
// example is not run by the example test harness.
type Example struct {
	Description string `json:"description" yaml:"description"`
	Example     string `json:"example" yaml:"example"`
	Result      *Value `json:"-" yaml:"-"`
}
