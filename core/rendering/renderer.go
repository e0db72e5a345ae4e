/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package rendering

import (
	"embed"
	"io"

	"github.com/google/arith/core/views"
	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// Renderer handles rendering of calculator view models to HTML
type Renderer struct {
	calculatorTemplate *template.Template
}

// NewRenderer creates a new renderer
func NewRenderer() (*Renderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	calculatorTemplate, err := template.New("calculator.html").ParseFS(trustedFS, "templates/calculator.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		calculatorTemplate: calculatorTemplate,
	}, nil
}

// RenderCalculator renders a CalculatorViewModel to the provided writer
func (r *Renderer) RenderCalculator(w io.Writer, vm views.CalculatorViewModel) error {
	return r.calculatorTemplate.Execute(w, vm)
}
