// Package clientip resolves the originating address of HTTP requests for
// request logs.
//
// Forwarding headers are only honoured when the service runs behind a proxy
// that sets them; otherwise any client could spoof its address.
//
//	r.Use(clientip.Middleware(cfg.TrustProxy))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		ip := clientip.FromContext(r.Context())
//	}
package clientip
