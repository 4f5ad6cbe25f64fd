package commands

// ResolveTarget exports resolveTarget for testing.
var ResolveTarget = resolveTarget //nolint:gochecknoglobals // test export

// ResolveURLCredentials exports resolveURLCredentials for testing.
var ResolveURLCredentials = resolveURLCredentials //nolint:gochecknoglobals // test export

// OpenMergeRequest exports openMergeRequest for testing.
var OpenMergeRequest = openMergeRequest //nolint:gochecknoglobals // test export

// ResolveSafeChildPath exports resolveSafeChildPath for testing.
var ResolveSafeChildPath = resolveSafeChildPath //nolint:gochecknoglobals // test export

// TargetInput exports targetInput for testing.
type TargetInput = targetInput
