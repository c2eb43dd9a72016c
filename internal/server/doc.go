// Package server exposes the tracker as a JSON API using gin.
//
// Routes:
//
//	GET    /health
//	GET    /api/status
//	POST   /api/check[?simulate=true]
//	GET    /api/days
//	GET    /api/wins[?filter=<query>]
//	GET    /api/wins.ics
//	GET    /api/groups
//	POST   /api/groups/:groupID/members
//	PUT    /api/groups/:groupID/members/:memberID
//	DELETE /api/groups/:groupID/members/:memberID
//	PUT    /api/groups/:groupID
//	GET    /api/groups/:groupID/share[?base=<url>]
//	POST   /api/import
package server
