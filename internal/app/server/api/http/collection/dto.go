package collection

import "condoadmin/internal/storage"

type listInput struct {
	Page             int    `query:"page" example:"1" doc:"Номер страницы, с 1"`
	PageSize         int    `query:"pageSize" example:"10" doc:"Размер страницы"`
	TotalItemsByPage int    `query:"totalItemsByPage" doc:"Legacy alias of pageSize"`
	Search           string `query:"search" doc:"Case-insensitive substring over the collection text fields"`
	Mes              string `query:"mes" example:"03"`
	Ano              string `query:"ano" example:"2024"`
	UnidadeID        string `query:"unidadeId"`
	BuildingName     string `query:"buildingName"`
	Year             string `query:"year"`
	ProfileID        string `query:"profileId"`
}

func (in *listInput) filters() map[string]string {
	return map[string]string{
		"mes":          in.Mes,
		"ano":          in.Ano,
		"unidadeId":    in.UnidadeID,
		"buildingName": in.BuildingName,
		"year":         in.Year,
		"profileId":    in.ProfileID,
	}
}

func (in *listInput) pageSize() int {
	if in.PageSize > 0 {
		return in.PageSize
	}
	return in.TotalItemsByPage
}

type listOutput struct {
	Body pageResponse
}

type pageResponse struct {
	Items      []storage.Record `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

type idInput struct {
	ID string `path:"id" example:"1" doc:"ID записи"`
}

type createInput struct {
	Body map[string]any
}

type updateInput struct {
	ID   string `path:"id" example:"1" doc:"ID записи"`
	Body map[string]any
}

type recordOutput struct {
	Body storage.Record
}

type definitionsOutput struct {
	Body []definitionResponse
}

type definitionResponse struct {
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	SearchFields []string          `json:"searchFields"`
	ExactFields  []string          `json:"exactFields"`
	Rules        map[string]string `json:"rules"`
}
