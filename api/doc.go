/*
Package api defines the wire contract between the wizard's post-install hook
and the deployment backend.

The hook (package postsetup) assembles a ProvisionRequest from the platform
session, the operator and the objects the wizard provisioned, validates it and
POSTs it as JSON to DefaultDeployServerAddr + ProvisionPath. The backend answers
200 on success; any other status is surfaced as a BackendError carrying the
status code and the raw body.

Subpackages:

 1. postsetup - the post-custom-setup hook and the deployment backend client
 2. deployhandler - a reference implementation of the deployment backend
*/
package api
