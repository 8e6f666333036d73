package sdk

import "time"

// NewSandboxGateway creates the default demo gateway: mostly successful, with
// every payload shape in rotation and the occasional encrypted response.
func NewSandboxGateway() *MockGateway {
	return NewMockGateway(MockConfig{
		GatewayName: "nimbbl-sandbox",
		Outcomes: OutcomeDistribution{
			SuccessRate:   0.70,
			FailureRate:   0.15,
			CancelRate:    0.10,
			EncryptedRate: 0.05,
		},
		Shapes: ShapeDistribution{
			ObjectRate:  0.60,
			WrappedRate: 0.25,
			LooseRate:   0.15,
		},
		MinLatency: 50 * time.Millisecond,
		MaxLatency: 200 * time.Millisecond,
	})
}

// NewFlakyGateway creates a gateway that mimics a misbehaving upstream:
// heavy on failures and on the loose string shape the normalizer has to
// pattern-extract.
func NewFlakyGateway() *MockGateway {
	return NewMockGateway(MockConfig{
		GatewayName: "nimbbl-flaky",
		Outcomes: OutcomeDistribution{
			SuccessRate:   0.25,
			FailureRate:   0.45,
			CancelRate:    0.20,
			EncryptedRate: 0.10,
		},
		Shapes: ShapeDistribution{
			ObjectRate:  0.20,
			WrappedRate: 0.30,
			LooseRate:   0.50,
		},
		MinLatency: 80 * time.Millisecond,
		MaxLatency: 400 * time.Millisecond,
	})
}
