package kinto

// Object is the base structure shared by Kinto resources: every stored
// object carries a server-assigned id and a last_modified timestamp in
// epoch milliseconds.
type Object struct {
	ID           string `json:"id"            yaml:"id"`
	LastModified int64  `json:"last_modified" yaml:"last_modified"`
}

// Bucket is a top-level namespace grouping collections.
type Bucket struct {
	Object
}

// Collection is a named grouping of records within a bucket.
type Collection struct {
	Object
}

// Record is a single JSON document within a collection. Records are
// schema-free, so the default representation is a plain map; consumers
// with a concrete schema should define their own type and pass it to
// RecordResource.
type Record map[string]interface{}

// ID returns the record's server-assigned identifier, or "" if absent.
func (r Record) ID() string {
	id, _ := r["id"].(string)

	return id
}

// LastModified returns the record's last_modified timestamp in epoch
// milliseconds, or 0 if absent.
func (r Record) LastModified() int64 {
	switch v := r["last_modified"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

// ServerInfo is the response of the server root endpoint.
type ServerInfo struct {
	ProjectName    string                 `json:"project_name"     yaml:"project_name"`
	ProjectVersion string                 `json:"project_version"  yaml:"project_version"`
	ProjectDocs    string                 `json:"project_docs"     yaml:"project_docs"`
	HTTPAPIVersion string                 `json:"http_api_version" yaml:"http_api_version"`
	URL            string                 `json:"url"              yaml:"url"`
	Capabilities   map[string]interface{} `json:"capabilities"     yaml:"capabilities"`
}
