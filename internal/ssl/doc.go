// Package ssl issues locally trusted certificates for project domains
// through mkcert.
//
// Certificates live in a single directory, one pair per domain:
//
//	~/.localhost-ssl/{domain}.pem      (certificate)
//	~/.localhost-ssl/{domain}-key.pem  (private key)
//
// # Bootstrap
//
// Before the first certificate, Provider.Bootstrap makes sure mkcert is on
// PATH and that its local CA is installed into the system trust stores.
// A missing mkcert is installed with the first available package manager
// from DefaultInstallers:
//
//	brew install mkcert nss          (as $SUDO_USER)
//	pacman -S --noconfirm --needed mkcert nss
//	apt install -y libnss3-tools mkcert
//	dnf install -y nss-tools mkcert
//
// The CA counts as installed when rootCA.pem exists under `mkcert -CAROOT`.
//
// # Issuance
//
//	p := ssl.NewProvider(executor.NewSystemExecutor(), certDir)
//	if err := p.Bootstrap(); err != nil { ... }
//	cert, err := p.Obtain("demo.test")
//
// Obtain is a no-op when both files already exist. Otherwise mkcert writes
// to ".partial" staging files which are renamed into place only when both
// were produced, so the directory never holds half a pair.
//
// # Testing
//
// Provider takes an executor.CommandExecutor; tests pass a MockExecutor
// whose ExecuteFunc writes the -cert-file and -key-file arguments.
package ssl
