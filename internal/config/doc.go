// Package config manages the persisted phpvhost settings and the project
// naming rules.
//
// The only persisted setting is the base directory that holds the PHP
// projects. It is stored in YAML at ~/.config/phpvhost/config.yaml:
//
//	base_path: /home/user/Projects
//
// The file is read once when a command starts and written back right after
// the base path is set or changed.
//
// # Projects
//
// Projects are not stored here. A project is identified by its domain,
// derived from the project folder name:
//
//	config.DomainFor("myapp")     // "myapp.test"
//	config.DefaultEntry("myapp")  // "myapp/public"
//
// and its state lives in the generated vhost file, the hosts file and the
// certificate directory.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if !cfg.HasBasePath() {
//	    _ = cfg.SetBasePath("~/Projects")
//	    err = cfg.Save()
//	}
//
//	root := cfg.DocumentRoot("myapp/public")
//
// # Thread Safety
//
// Config operations are NOT thread-safe. Callers must implement their own
// synchronization if accessing Config from multiple goroutines.
package config
