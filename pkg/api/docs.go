// Package api provides the ReorgGuard status API
// @title ReorgGuard API
// @version 1.0
// @description REST API reporting reorg check status and the stored block history
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/ReorgGuard
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
