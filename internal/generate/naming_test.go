// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user_profile", "UserProfile"},
		{"user-profile", "UserProfile"},
		{"user", "User"},
		{"User_Status", "UserStatus"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToPascalCase(tt.in))
	}
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "userProfile", ToCamelCase("user_profile"))
	assert.Equal(t, "color", ToCamelCase("Color"))
	assert.Equal(t, "userStatus", ToCamelCase("User_Status"))
	assert.Equal(t, "", ToCamelCase(""))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "user_profile", ToSnakeCase("User Profile"))
	assert.Equal(t, "_1user", ToSnakeCase("1user"))
}

func TestSchemaName(t *testing.T) {
	assert.Equal(t, "UserSchema", SchemaName("User"))
}

func TestRelativeImport(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"same directory", "acme/v1/user", "acme/v1/color_zod", "./color_zod"},
		{"sibling directory", "acme/v1/user", "acme/common/color_zod", "../common/color_zod"},
		{"down into subdirectory", "acme/user", "acme/v1/color_zod", "./v1/color_zod"},
		{"up two levels", "acme/v1/nested/user", "acme/color_zod", "../../color_zod"},
		{"root to nested", "user", "acme/v1/color_zod", "./acme/v1/color_zod"},
		{"nested to root", "acme/v1/user", "color_zod", "../../color_zod"},
		{"both at root", "user", "color_zod", "./color_zod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeImport(tt.from, tt.to))
		})
	}
}
