package pid

// Sample holds the intermediate values of a single Update call.
type Sample struct {
	ProcessValue float32 `json:"processValue"`
	DeltaTime    float32 `json:"deltaTime"`
	Error        float32 `json:"error"`
	// error of the sample that was evicted from the integral window
	HistError float32 `json:"histError"`
	// contribution of the evicted sample to the integral
	HistIntegral float32 `json:"histIntegral"`
	Integral     float32 `json:"integral"`
	Derivative   float32 `json:"derivative"`
	Output       float32 `json:"output"`
}

// Observer is notified synchronously at the end of each successful Update.
type Observer interface {
	Observe(sample Sample)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(sample Sample)

func (f ObserverFunc) Observe(sample Sample) {
	f(sample)
}
