package pages

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-meta-tokens/core"
	"github.com/goliatone/go-meta-tokens/providers/meta/common"
)

// SearchFields is the field selection sent with every search request.
const SearchFields = "id,name,location{city,country,latitude,longitude,state,street,zip}," +
	"link,is_eligible_for_branded_content,is_unclaimed,verification_status"

const searchPath = "pages/search"

// SearchEndpoint is GET /{version}/pages/search. Limit is omitted when zero
// and After when empty.
type SearchEndpoint struct {
	Q           string
	AccessToken string
	Limit       int
	After       string

	Version   string
	BaseURL   string
	UserAgent string
}

type SearchResponse struct {
	Data   []Page               `json:"data"`
	Paging *common.CursorPaging `json:"paging,omitempty"`
}

// NextCursor returns the cursor for the following page, if there is one.
func (r SearchResponse) NextCursor() (string, bool) {
	if r.Paging == nil {
		return "", false
	}
	return r.Paging.NextCursor()
}

func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	fields, err := common.DecodeObject(data, "pages search response")
	if err != nil {
		return err
	}
	var decoded SearchResponse
	if err := common.RequireField(fields, "data", &decoded.Data); err != nil {
		return err
	}
	if err := common.OptionalField(fields, "paging", &decoded.Paging); err != nil {
		return err
	}
	*r = decoded
	return nil
}

func (e SearchEndpoint) RenderRequest() (core.TransportRequest, error) {
	if strings.TrimSpace(e.Q) == "" {
		return core.TransportRequest{}, core.RequestBuildError("pages: q is required", nil)
	}
	if strings.TrimSpace(e.AccessToken) == "" {
		return core.TransportRequest{}, core.RequestBuildError("pages: access_token is required", nil)
	}
	if e.Limit < 0 {
		return core.TransportRequest{}, core.RequestBuildError("pages: limit must not be negative", map[string]any{
			"limit": e.Limit,
		})
	}

	query := []common.QueryParam{
		{Key: "fields", Value: SearchFields},
		{Key: "q", Value: e.Q},
		{Key: "access_token", Value: e.AccessToken},
	}
	if e.Limit > 0 {
		query = append(query, common.QueryParam{Key: "limit", Value: strconv.Itoa(e.Limit)})
	}
	if e.After != "" {
		query = append(query, common.QueryParam{Key: "after", Value: e.After})
	}
	return common.GraphRequest{
		BaseURL:   e.BaseURL,
		Version:   e.Version,
		Path:      searchPath,
		Query:     query,
		UserAgent: e.UserAgent,
	}.Render()
}

func (e SearchEndpoint) ParseResponse(res core.TransportResponse) (common.Ret[SearchResponse], error) {
	return common.ParseResponse[SearchResponse](res)
}

var _ common.Endpoint[SearchResponse] = SearchEndpoint{}
