package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePersona(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Persona
		wantErr bool
	}{
		{name: "executive", raw: "executive", want: PersonaExecutive},
		{name: "warehouse manager", raw: "warehouse_manager", want: PersonaWarehouseManager},
		{name: "sales analyst", raw: "sales_analyst", want: PersonaSalesAnalyst},
		{name: "finance auditor", raw: "finance_auditor", want: PersonaFinanceAuditor},
		{name: "empty", raw: "", want: PersonaUnknown, wantErr: true},
		{name: "unknown role", raw: "intern", want: PersonaUnknown, wantErr: true},
		{name: "case sensitive", raw: "Executive", want: PersonaUnknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePersona(tt.raw)
			assert.Equal(t, tt.want, got)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPersonaStringRoundTrip(t *testing.T) {
	for _, persona := range Personas() {
		parsed, err := ParsePersona(persona.String())
		assert.NoError(t, err)
		assert.Equal(t, persona, parsed)
	}

	assert.Equal(t, "unknown", PersonaUnknown.String())
}
