package common

const (
	ComponentReorgDetector = "reorg-detector"
	ComponentRPCClient     = "rpc-client"
	ComponentBlockStore    = "block-store"
	ComponentWatcher       = "watcher"
	ComponentAPI           = "api"
	ComponentCLI           = "cli"
)

var AllComponents = map[string]struct{}{
	ComponentReorgDetector: {},
	ComponentRPCClient:     {},
	ComponentBlockStore:    {},
	ComponentWatcher:       {},
	ComponentAPI:           {},
	ComponentCLI:           {},
}
