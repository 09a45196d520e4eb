package common

// PackageName is used as the metrics namespace and the default log service tag.
const PackageName = "pca_wizard"

// Version is set at build time with -ldflags "-X .../common.Version=...".
var Version = "dev"
