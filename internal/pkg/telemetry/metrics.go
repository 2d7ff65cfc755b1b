package telemetry

// Span names used for instrumentation.
const (
	SpanConvert = "profile.convert"
	SpanProfile = "profile.extract_only"

	SpanDecode  = "profile.decode"
	SpanExtract = "profile.extract"
	SpanCompose = "profile.compose"
	SpanEncode  = "profile.encode"
	SpanPublish = "profile.publish"
)

// InstrumentationName identifies spans created by this service.
const InstrumentationName = "github.com/geojsonprofil/profil"
