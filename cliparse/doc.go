// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Cobra commands bind the same flags on their own flag sets:

	cliparse.Bind(cmd.Flags(), &cfg)
	// after parsing
	err := cliparse.Resolve(cmd.Flags(), &cfg)

# CLI Flags

	-p, --port            Server port (default 8080)
	-d, --database-url    Database URL
	-t, --database-type   sqlite or postgres (inferred from the URL)
	--jwt-secret          JWT verification secret
	--genai-api-key       Gemini API key
	--genai-model         Gemini model (default gemini-2.0-flash)
	--assign-delay        Pause between assignment writes (default 50ms)
	--env                 development or production
	--allowed-origins     CORS origins
	--env-file            .env file to load (default .env)

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, JWT_SECRET, GEMINI_API_KEY,
	GENAI_MODEL, ASSIGN_DELAY, APP_ENV, ALLOWED_ORIGINS

Precedence: flag, then environment, then the .env file, then defaults.

# Validation

Check reports missing or unusable values. DATABASE_URL is always required;
JWT_SECRET only for commands that serve requests.
*/
package cliparse
