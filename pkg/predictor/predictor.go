// Package predictor defines the opaque prediction provider consumed by the
// requestPrediction mutation. The gateway treats the returned property bag
// as uninterpreted data.
package predictor

import "context"

// Prediction is the value bag a provider returns for one molecule.
type Prediction struct {
	Properties   map[string]any
	Confidence   float64
	ModelVersion string
}

// Provider computes a prediction for a molecule identified by its SMILES
// string. modelType selects the model family (SOLUBILITY, TOXICITY, ...).
type Provider interface {
	Predict(ctx context.Context, smiles, modelType string) (*Prediction, error)
}
