// Package apache manages the generated virtual host files and the single
// include directive that makes Apache load them.
//
// Each project owns one file, {dir}/{domain}.conf, holding an HTTP and an
// HTTPS block on the same document root. The server config is only ever
// appended to: EnsureInclude adds the IncludeOptional line for the vhost
// directory once, detected by a substring match of the directory token.
//
//	store := apache.New(layout.VHostDir, layout.ServerConfig, layout.IncludeDirective, layout.IncludeToken).
//		WithServerRoot(layout.ServerRoot)
//	if _, err := store.EnsureInclude(); err != nil { ... }
//	path, changed, err := store.Write("demo.test", "/srv/demo/public", cert, key)
package apache
