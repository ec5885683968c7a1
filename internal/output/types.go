package output

import (
	"github.com/lox/notionctl/internal/notion"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type DatabaseSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	CreatedTime    any    `json:"created_time"`
	LastEditedTime any    `json:"last_edited_time"`
}

type DatabaseList struct {
	Databases []DatabaseSummary `json:"databases"`
}

type PageSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	CreatedTime    any    `json:"created_time"`
	LastEditedTime any    `json:"last_edited_time"`
}

type PageList struct {
	Pages []PageSummary `json:"pages"`
}

type PageDetail struct {
	PageSummary
	Properties *orderedmap.OrderedMap[string, any] `json:"properties"`
	Blocks     []StructuredBlock                   `json:"blocks"`
}

func (d PageDetail) MarshalJSON() ([]byte, error) {
	return notion.Marshal(struct {
		PageSummary
		Properties any               `json:"properties"`
		Blocks     []StructuredBlock `json:"blocks"`
	}{d.PageSummary, notion.Literal(d.Properties), d.Blocks})
}

type Entry struct {
	ID         string                              `json:"id"`
	URL        string                              `json:"url"`
	Properties *orderedmap.OrderedMap[string, any] `json:"properties"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return notion.Marshal(struct {
		ID         string `json:"id"`
		URL        string `json:"url"`
		Properties any    `json:"properties"`
	}{e.ID, e.URL, notion.Literal(e.Properties)})
}

// SavedView is a named database query preset.
type SavedView struct {
	Name        string
	Database    string
	Columns     []string
	Filter      string
	Limit       int
	Description string
}

type ViewSummary struct {
	Name        string   `json:"name"`
	Database    string   `json:"database_name"`
	Columns     []string `json:"columns"`
	Filter      *string  `json:"filter"`
	Limit       *int     `json:"limit"`
	Description *string  `json:"description"`
}

type ViewList struct {
	Views []ViewSummary `json:"views"`
}

type DatabaseSchema struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	URL        string           `json:"url"`
	Properties []PropertySchema `json:"properties"`
}

type PropertySchema struct {
	Name       string          `json:"name"`
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Options    []SchemaOption  `json:"options,omitzero"`
	Format     *string         `json:"format,omitempty"`
	Expression *string         `json:"expression,omitempty"`
	Relation   *RelationConfig `json:"relation,omitempty"`
	Rollup     *RollupConfig   `json:"rollup,omitempty"`
}

type SchemaOption struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Color string `json:"color"`
}

type RelationConfig struct {
	DatabaseID         string `json:"database_id"`
	SyncedPropertyName string `json:"synced_property_name,omitempty"`
}

type RollupConfig struct {
	RelationPropertyName string `json:"relation_property_name"`
	RelationPropertyID   string `json:"relation_property_id"`
	RollupPropertyName   string `json:"rollup_property_name"`
	RollupPropertyID     string `json:"rollup_property_id"`
	Function             string `json:"function"`
}

func summaryTimes(obj notion.Object) (created, edited any) {
	return obj.Value("created_time"), obj.Value("last_edited_time")
}

type SearchResult struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type SearchResultList struct {
	Results []SearchResult `json:"results"`
}

type Comment struct {
	ID           string `json:"id"`
	DiscussionID string `json:"discussion_id"`
	CreatedTime  any    `json:"created_time"`
	CreatedBy    string `json:"created_by"`
	Content      string `json:"content"`
}

type CommentList struct {
	Comments []Comment `json:"comments"`
}
