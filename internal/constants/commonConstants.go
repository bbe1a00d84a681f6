package constants

type (
	APIStatus string
	Role      string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	RoleAdmin Role = "admin"
)

func (r Role) String() string { return string(r) }

// Redis namespaces under the configured key prefix
const (
	CacheNamespaceReference = "ref"
	CacheNamespaceSolar     = "solar"
)
