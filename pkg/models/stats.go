package models

type Stats struct {
	Total     int `json:"total"`
	ParaLer   int `json:"para_ler"`
	Lendo     int `json:"lendo"`
	Concluida int `json:"concluida"`
}

type RecalculateAllResult struct {
	Total        int `json:"total"`
	Recalculated int `json:"recalculated"`
	Errors       int `json:"errors"`
}
