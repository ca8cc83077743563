package project

var (
	description string = "The azure-automation tools reconcile Azure load balancers and build dynamic VM inventories."
	gitSHA             = "n/a"
	name        string = "azure-automation"
	source             = "https://github.com/giantswarm/azure-automation"
	version            = "1.0.0"
)

func Description() string {
	return description
}

func GitSHA() string {
	return gitSHA
}

func Name() string {
	return name
}

func Source() string {
	return source
}

func Version() string {
	return version
}
