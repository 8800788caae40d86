package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr bool
	}{
		{
			name: "valid rule",
			rule: Rule{Label: "Apparel", Patterns: []string{"shirt"}, Line: 1},
		},
		{
			name:    "missing label",
			rule:    Rule{Patterns: []string{"shirt"}, Line: 1},
			wantErr: true,
		},
		{
			name:    "missing patterns",
			rule:    Rule{Label: "Apparel", Line: 1},
			wantErr: true,
		},
		{
			name:    "blank pattern",
			rule:    Rule{Label: "Apparel", Patterns: []string{"  "}, Line: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRule_Column(t *testing.T) {
	plain := Rule{Label: "Apparel"}
	assert.Equal(t, MatchedLabelColumn, plain.Column())

	grouped := Rule{Attribute: "Voltage", Label: "110v"}
	assert.Equal(t, "Voltage", grouped.Column())
}

func TestSplitPatterns(t *testing.T) {
	assert.Equal(t, []string{"110", "110v", "127"}, SplitPatterns("110, 110v ,127"))
	assert.Equal(t, []string{"bivolt"}, SplitPatterns("bivolt,,  ,"))
	assert.Empty(t, SplitPatterns("  "))
}

func TestRow_Description(t *testing.T) {
	row := Row{Values: map[string]string{"Description": "red shirt"}, Line: 1}

	desc, ok := row.Description("Description")
	assert.True(t, ok)
	assert.Equal(t, "red shirt", desc)

	_, ok = row.Description("Missing")
	assert.False(t, ok)
}
