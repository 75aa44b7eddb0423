package constants

// viper keys
const (
	ViperServerAddr     = "server.addr"
	ViperDBDSN          = "db.dsn"
	ViperSecretKey      = "auth.secret"
	ViperAllowUnscoped  = "access.allow_unscoped"
	ViperCORSOrigin     = "server.cors_origin"
	ViperLoadValuesPara = "ingest.load_parallelism"
)

// ctx keys
const (
	CtxKeyUserID    = "user_id"
	CtxKeyRequestID = "request_id"
)

// cookies
const (
	CookieKeyAuthToken = "auth_token"
)

// permission names, as provisioned in the roles catalog
const (
	PermViewDashboard = "ver_dashboard"
	PermLoadData      = "cargar_datos"
)

// access actions
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)
