package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteRequest_Validate(t *testing.T) {
	valid := WriteRequest{Owner: "octo", Repo: "site", Path: "docs/a.md", Branch: "main"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *WriteRequest)
		field  string
	}{
		{name: "missing owner", mutate: func(r *WriteRequest) { r.Owner = "" }, field: "owner"},
		{name: "missing repo", mutate: func(r *WriteRequest) { r.Repo = "" }, field: "repo"},
		{name: "missing path", mutate: func(r *WriteRequest) { r.Path = "" }, field: "path"},
		{name: "missing branch", mutate: func(r *WriteRequest) { r.Branch = "" }, field: "branch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLookupStatus_String(t *testing.T) {
	assert.Equal(t, "not_found", LookupNotFound.String())
	assert.Equal(t, "found", LookupFound.String())
	assert.Equal(t, "transient", LookupTransient.String())
	assert.Equal(t, "failed", LookupFailed.String())
	assert.Equal(t, "unknown", LookupStatus(42).String())
}
