// Package secrets loads envault config files and fetches the variables they
// describe from the envault service.
//
// # Config Files
//
// A config file is a YAML document in a workspace folder's envault/ folder:
//
//	apiKeyName: ENVAULT_API_KEY
//	url: https://vault.example.com/
//	vars:
//	  - app/dev
//
// apiKeyName names an environment variable holding the real API key; the
// key itself never appears in the file. LoadIfExists validates the three
// required keys and their types.
//
// # Fetching
//
// Client.Fetch posts the JSON array of vars to <url>/load with an api-key
// header and decodes the JSON object response. Client.Start runs one fetch
// per call on its own goroutine and hands back a single Result; callers
// apply the result on their own goroutine. Failures are returned, never
// retried.
//
// # Cache
//
// Cache keeps the last fetch result per config path for the life of the
// process. Store replaces an entry wholesale.
package secrets
