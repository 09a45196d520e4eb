// Package postsetup implements the wizard's post-custom-setup hook.
//
// The wizard engine calls the hook once, after every platform object listed in
// the provisioning catalog has been created. The hook:
//
//  1. Checks that the platform session carries a configuration
//  2. Checks that the operator and their organization are identified
//  3. Resolves the OAuth client and open-messaging integration through the
//     catalog: object type -> first template name -> installed attribute
//  4. Validates that no field of the request is empty
//  5. POSTs the request to the deployment backend
//
// The result is always an interfaces.Outcome. Status is true only when the
// backend answered 200; Cause is "SUCCESS" or a human readable reason such as
// "Missing value for: oauthClientSecret" or "Backend error: 500 - server error".
//
// # Usage Example
//
//	cfg, _ := wizardconfig.Default()
//	hook := postsetup.NewNotifier(cfg.ProvisioningInfo, nil, logger)
//
//	outcome := hook.Configure(ctx, logFunc, installed, user, session)
//	if !outcome.Status {
//		log.Printf("post install failed: %s", outcome.Cause)
//	}
package postsetup
