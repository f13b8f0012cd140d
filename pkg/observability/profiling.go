package observability

import (
	"os"

	pyroscope "github.com/grafana/pyroscope-go"

	"encode-service/pkg/config"
)

// StartProfiling attaches the continuous profiler. The configured server
// address wins; PYROSCOPE_SERVER_ADDRESS is the fallback. With neither set
// it is a no-op so local runs need no collector.
func StartProfiling(appName string, cfg config.ProfilingConfig) {
	addr := ""
	if cfg.Enabled {
		addr = cfg.ServerAddress
	}
	if addr == "" {
		addr = os.Getenv("PYROSCOPE_SERVER_ADDRESS")
	}
	if addr == "" {
		return
	}

	_, _ = pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   addr,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
}
