// Package environment names the deployment environments (development,
// staging, production) and carries the current one through context.Context
// so structured logs can be tagged with it.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	ctx = environment.WithContext(ctx, env)
//	if environment.IsProduction(ctx) {
//		// ...
//	}
//
// LoggerExtractor plugs into logger.WithContextExtractors.
package environment
