package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldErrorf("timing.melee_spacing", "must be at least %s", "150ms")

	s.True(ve.HasErrors())
	s.Contains(ve.Error(), "name: is required")
	s.Contains(ve.Error(), "timing.melee_spacing: must be at least 150ms")

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		RequiredField("ref").
		InvalidField("archetype", "not a base path")

	err := vb.Build()
	s.Require().NotNil(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.Nil(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidatePercent() {
	testCases := []struct {
		name      string
		value     float64
		shouldErr bool
	}{
		{"zero", 0, false},
		{"default threshold", 80, false},
		{"full", 100, false},
		{"fraction instead of percent is still valid", 0.8, false},
		{"negative", -1, true},
		{"over 100", 120, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidatePercent("threshold", tc.value, vb)
			s.Equal(tc.shouldErr, vb.Build() != nil)
		})
	}
}

func (s *ValidationTestSuite) TestValidateEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("archetype", "mage", []string{"mage", "poet"}, vb)
	s.Nil(vb.Build())

	errors.ValidateEnum("archetype", "bard", []string{"mage", "poet"}, vb)
	err := vb.Build()
	s.Require().Error(err)
	s.Contains(err.Error(), "must be one of: mage, poet")
}

func (s *ValidationTestSuite) TestValidateRequiredAndPositive() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", "   ", vb)
	errors.ValidatePositive("redis.pool_size", 0, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Contains(err.Error(), "name: is required")
	s.Contains(err.Error(), "redis.pool_size: must be greater than 0")
}
