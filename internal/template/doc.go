// Package template renders the generated Apache vhost file from an
// embedded Go template.
//
// There is a single template, apache/vhost.tmpl, producing two
// <VirtualHost> sections for the same document root:
//
//	<VirtualHost *:80>   plain HTTP
//	<VirtualHost *:443>  TLS with the mkcert certificate pair
//
// # Rendering
//
//	content, err := template.RenderVHost(template.TemplateData{
//	    Domain:  "demo.test",
//	    Root:    "/srv/demo/public",
//	    SSLCert: "/root/.localhost-ssl/demo.test.pem",
//	    SSLKey:  "/root/.localhost-ssl/demo.test-key.pem",
//	})
//
// Output depends only on the data, so rewriting a vhost file with the same
// inputs yields identical bytes.
package template
