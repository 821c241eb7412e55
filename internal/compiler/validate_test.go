package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/buildergen/internal/ir"
)

func validateFields(t *testing.T, fields ...ir.RawField) error {
	t.Helper()
	rec := &ir.Record{Name: "R", Fields: fields}
	return Validate(rec, Classify(rec, DefaultWrapper), DefaultWrapper, DefaultNaming())
}

func requireReason(t *testing.T, err error, reason Reason, field string) {
	t.Helper()
	require.Error(t, err)
	var ce *CompileError
	require.True(t, errors.As(err, &ce), "expected *CompileError, got %T", err)
	assert.Equal(t, reason, ce.Reason)
	assert.Equal(t, field, ce.Field)
}

func TestValidateAcceptsCommand(t *testing.T) {
	err := validateFields(t,
		ir.RawField{Name: "executable", Type: mustExpr(t, "string")},
		ir.RawField{Name: "args", Type: mustExpr(t, "[]string")},
		ir.RawField{Name: "currentDir", Type: mustExpr(t, "opt.Option[string]")},
	)
	assert.NoError(t, err)
}

func TestValidateNestedOptional(t *testing.T) {
	err := validateFields(t,
		ir.RawField{Name: "ok", Type: mustExpr(t, "opt.Option[int]")},
		ir.RawField{Name: "nested", Type: mustExpr(t, "opt.Option[opt.Option[int]]")},
	)
	requireReason(t, err, ReasonNestedOptional, "nested")
	assert.Contains(t, err.Error(), "E104")
	assert.Contains(t, err.Error(), "opt.Option[opt.Option[int]]")
}

func TestValidateNameCollisions(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		field  string
	}{
		{"same slot", []string{"ID", "id"}, "id"},
		{"same setter", []string{"url", "Url"}, "Url"},
		{"setter is Build", []string{"build"}, "build"},
		{"exported Build", []string{"Build"}, "Build"},
		{"uncased first letter", []string{"日付"}, "日付"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raws []ir.RawField
			for _, n := range tt.fields {
				raws = append(raws, ir.RawField{Name: n, Type: mustExpr(t, "int")})
			}
			err := validateFields(t, raws...)
			requireReason(t, err, ReasonNameCollision, tt.field)
			assert.Contains(t, err.Error(), "E103")
		})
	}
}

func TestValidateCustomFinalizeName(t *testing.T) {
	rec := &ir.Record{Name: "R", Fields: []ir.RawField{{Name: "build", Type: mustExpr(t, "int")}}}
	names := Naming{BuilderSuffix: "Builder", FactoryPrefix: "New", Finalize: "Finish"}

	err := Validate(rec, Classify(rec, DefaultWrapper), DefaultWrapper, names)
	assert.NoError(t, err, "a field named build is fine when finalize is renamed")
}

func TestValidateReservedTypeParam(t *testing.T) {
	rec := &ir.Record{
		Name:       "Box",
		TypeParams: []ir.TypeParam{{Name: "value", Constraint: mustExpr(t, "any")}},
		Fields:     []ir.RawField{{Name: "v", Type: mustExpr(t, "value")}},
	}

	err := Validate(rec, Classify(rec, DefaultWrapper), DefaultWrapper, DefaultNaming())
	requireReason(t, err, ReasonNameCollision, "")
	assert.Contains(t, err.Error(), "type parameter value")
}
