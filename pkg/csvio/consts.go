package csvio

const (
	cModePlain = "plain"
	cModeGZip  = "gzip"

	CWriteModeAppend = "a"
	CWriteModeWrite  = "w"
)
