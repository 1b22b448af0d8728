package api

import (
	"github.com/JaimeStill/lector/internal/agents"
	"github.com/JaimeStill/lector/internal/documents"
	"github.com/JaimeStill/lector/internal/session"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Session   session.System
	Documents documents.System
	Templates agents.TemplateSystem
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Session:   session.New(runtime.DefaultModel, runtime.Logger),
		Documents: documents.New(runtime.Gateway, runtime.Logger),
		Templates: agents.NewTemplates(runtime.Database.Connection(), runtime.Logger),
	}
}
