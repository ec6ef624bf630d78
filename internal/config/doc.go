// Package config loads the salesreport configuration.
//
// Values are layered in this order, later layers winning:
//
//  1. Default() built-in values
//  2. a YAML file (explicit path, or salesreport.yaml / configs/salesreport.yaml)
//  3. SALESREPORT_* environment variables, optionally seeded from a .env file
//
// Command-line flags are applied on top by cmd/salesreport. The merged result is
// validated with go-playground/validator before it is returned.
//
// Example:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Report.OutputPath)
package config
