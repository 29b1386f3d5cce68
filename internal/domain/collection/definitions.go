package collection

// Collection names as they appear in the persisted document.
const (
	Usuarios      = "usuarios"
	Perfil        = "perfil"
	Boletos       = "boletos"
	SalesData     = "salesData"
	Movimentacoes = "movimentacoes"
)

// DefaultDefinitions returns the collections the condominium back end serves.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name:         Usuarios,
			Title:        "Users",
			SearchFields: []string{"name", "email"},
			ExactFields:  []string{"profileId"},
			Rules: map[string]string{
				"name":     "required",
				"email":    "required,max=254,email",
				"password": "required",
			},
			Hidden: []string{"password"},
			Unique: []string{"email"},
		},
		{
			Name:         Perfil,
			Title:        "Profiles",
			SearchFields: []string{"description"},
			Rules: map[string]string{
				"description": "required",
			},
		},
		{
			Name:         Boletos,
			Title:        "Bills",
			SearchFields: []string{"status", "descricao", "unidade"},
			ExactFields:  []string{"mes", "ano", "unidadeId"},
			Rules: map[string]string{
				"unidadeId":  "required",
				"valor":      "required,amount,gt=0",
				"vencimento": "required,datetime=2006-01-02",
				"status":     "required,oneof=Pago Pendente Vencido Cancelado",
			},
		},
		{
			Name:         SalesData,
			Title:        "Sales data",
			SearchFields: []string{"buildingName", "month"},
			ExactFields:  []string{"buildingName", "year"},
			Rules: map[string]string{
				"buildingName": "required",
				"year":         "required",
				"month":        "required",
			},
		},
		{
			Name:         Movimentacoes,
			Title:        "Statement movements",
			SearchFields: []string{"descricao", "categoria"},
			ExactFields:  []string{"mes", "ano", "buildingName"},
			Rules: map[string]string{
				"descricao": "required",
				"tipo":      "required,oneof=entrada saida",
				"valor":     "required,amount,gt=0",
				"data":      "omitempty,datetime=2006-01-02",
			},
		},
	}
}

// WithPrepare returns defs with fn installed as the prepare hook of name.
func WithPrepare(defs []Definition, name string, fn PrepareFunc) []Definition {
	out := make([]Definition, len(defs))
	copy(out, defs)
	for i := range out {
		if out[i].Name == name {
			out[i].Prepare = fn
		}
	}
	return out
}
