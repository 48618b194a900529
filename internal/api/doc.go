// Package api provides the JSON HTTP server for Parley.
//
// # Architecture
//
// The server uses Go 1.22+ routing with a layered middleware stack:
//
//	Recovery → RequestID → Logging → CORS → RateLimit → Routes
//
// Health probes (/health, /ready) bypass the middleware stack via a
// top-level mux, ensuring they remain fast and dependency-free.
//
// # Endpoints
//
// Health probes (no middleware):
//   - GET /health: liveness, returns {"status":"ok"}
//   - GET /ready: readiness, pings the database pool
//
// Chat relay:
//   - POST /api/v1/chat: one prompt in, one reply out
//
// Thread inspection:
//   - GET    /api/v1/history/{uid}: the uid's thread, oldest first
//   - DELETE /api/v1/history/{uid}: clear the uid's thread
//   - GET    /api/v1/stats: corpus-wide turn and user counts
//
// Chat page:
//   - GET /: bundled single-page client (embedded assets)
//
// # Response Shapes
//
// Inspection endpoints use an envelope format:
//
//	Success: {"data": <payload>}
//	Error:   {"error": {"code": "...", "message": "...", "status": ...}}
//
// The chat relay endpoint is the exception. Its flat response shape is
// fixed by the chat client contract:
//
//	{"success": true, "reply": "...", "isDemo": false, "error": "..."}
//
// A classified provider failure still produces HTTP 200 with success=true
// and a safe reply; the error field carries the failure slug so clients
// can tell a fallback from a real answer. Only transport-level rejections
// (malformed JSON, missing fields, rate limiting) use HTTP error codes.
//
// # Security
//
// The middleware stack enforces:
//   - Per-IP rate limiting (token bucket, 60 req/min burst)
//   - CORS with explicit origin allowlist
//   - Security headers (CSP, X-Frame-Options, nosniff)
package api
