// Package deployhandler implements the deployment backend endpoint the
// wizard's post-install hook notifies.
//
// A provisioned organization is kept as two records keyed by its orgId: the
// registration (the request without the OAuth client secret) and the secret
// itself, so the two can live in different storage backends. Provisioning the
// same organization again replaces both records.
package deployhandler
