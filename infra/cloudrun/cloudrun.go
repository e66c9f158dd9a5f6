package cloudrun

import (
	"fmt"
	"strconv"

	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/cloudrun"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"

	"github.com/GregMSThompson/gwamegi-riders/infra/common"
	dockerrepo "github.com/GregMSThompson/gwamegi-riders/infra/docker"
)

// Credential describes where the running service finds the AI API key.
type Credential struct {
	Source       string
	SecretName   pulumi.StringOutput
	KMSKeyName   pulumi.StringOutput
	SealedAPIKey pulumi.StringOutput
	Deps         []pulumi.Resource
}

// SetupCloudRun builds the api image and deploys it publicly, returning the service URL.
func SetupCloudRun(ctx *pulumi.Context,
	prov *gcp.Provider,
	apiSA *serviceaccount.Account,
	cred *Credential,
	contentSource string,
	res ...pulumi.Resource) (pulumi.StringOutput, error) {
	empty := pulumi.String("").ToStringOutput()

	img, err := buildApiImage(ctx, res...)
	if err != nil {
		return empty, err
	}

	srv, err := projects.NewService(ctx, "cloudRunService", &projects.ServiceArgs{
		Service: pulumi.String("run.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return empty, err
	}

	svc, err := createCloudRunService(ctx, img, apiSA, cred, contentSource, prov, append(cred.Deps, srv)...)
	if err != nil {
		return empty, err
	}

	if err := allowPublicAccess(ctx, svc, prov); err != nil {
		return empty, err
	}

	return svc.Statuses.Index(pulumi.Int(0)).Url().Elem(), nil
}

func buildApiImage(ctx *pulumi.Context, res ...pulumi.Resource) (*docker.Image, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	hash, err := common.SourceHash("..")
	if err != nil {
		return nil, err
	}

	return docker.NewImage(ctx, "apiImage", &docker.ImageArgs{
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/amd64"),
			Context:    pulumi.String(".."),
			Dockerfile: pulumi.String("../cmd/api/Dockerfile"),
		},
		ImageName: pulumi.String(fmt.Sprintf("%s-docker.pkg.dev/%s/%s/riders-api:%s", region, projectID, dockerrepo.RepositoryID, hash)),
	},
		pulumi.DependsOn(res),
	)
}

// CreateServiceAccount creates the identity the api runs as. It can always
// call Vertex AI and gets Firestore access only when content lives there.
func CreateServiceAccount(ctx *pulumi.Context, prov *gcp.Provider, firestoreAccess bool) (*serviceaccount.Account, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")

	apiSA, err := serviceaccount.NewAccount(ctx, "apiServiceAccount", &serviceaccount.AccountArgs{
		AccountId:   pulumi.String("riders-api"),
		DisplayName: pulumi.String("Gwamegi Riders API"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}
	member := apiSA.Email.ApplyT(func(email string) string {
		return fmt.Sprintf("serviceAccount:%s", email)
	}).(pulumi.StringOutput)

	roles := map[string]string{"vertexAccess": "roles/aiplatform.user"}
	if firestoreAccess {
		roles["firestoreAccess"] = "roles/datastore.user"
	}
	for name, role := range roles {
		_, err = projects.NewIAMMember(ctx, name, &projects.IAMMemberArgs{
			Role:    pulumi.String(role),
			Member:  member,
			Project: pulumi.String(projectID),
		},
			pulumi.Provider(prov),
		)
		if err != nil {
			return nil, err
		}
	}

	return apiSA, nil
}

func env(name string, value pulumi.StringInput) *cloudrun.ServiceTemplateSpecContainerEnvArgs {
	return &cloudrun.ServiceTemplateSpecContainerEnvArgs{Name: pulumi.String(name), Value: value}
}

func credentialEnvs(cred *Credential) cloudrun.ServiceTemplateSpecContainerEnvArray {
	envs := cloudrun.ServiceTemplateSpecContainerEnvArray{
		env("CREDENTIALSOURCE", pulumi.String(cred.Source)),
	}
	switch cred.Source {
	case "kms":
		envs = append(envs,
			env("KMSKEYNAME", cred.KMSKeyName),
			env("SEALEDAPIKEY", cred.SealedAPIKey),
		)
	default:
		envs = append(envs, env("APIKEYSECRET", cred.SecretName))
	}
	return envs
}

func createCloudRunService(ctx *pulumi.Context,
	img *docker.Image,
	apiSA *serviceaccount.Account,
	cred *Credential,
	contentSource string,
	prov *gcp.Provider,
	res ...pulumi.Resource) (*cloudrun.Service, error) {
	gcpCfg := config.New(ctx, "gcp")
	crCfg := config.New(ctx, "cloudrun")
	ridersCfg := config.New(ctx, "riders")

	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")
	timeout, err := strconv.Atoi(crCfg.Require("timeout"))
	if err != nil {
		return nil, fmt.Errorf("cloudrun:timeout: %w", err)
	}

	envs := cloudrun.ServiceTemplateSpecContainerEnvArray{
		env("PROJECTID", pulumi.String(projectID)),
		env("REGION", pulumi.String(region)),
		env("LOGLEVEL", pulumi.String(crCfg.Require("logLevel"))),
		env("AIPROVIDER", pulumi.String("vertex")),
		env("CONTENTSOURCE", pulumi.String(contentSource)),
	}
	if model := ridersCfg.Get("vertexModel"); model != "" {
		envs = append(envs, env("VERTEXMODEL", pulumi.String(model)))
	}
	envs = append(envs, credentialEnvs(cred)...)

	return cloudrun.NewService(ctx, "apiService", &cloudrun.ServiceArgs{
		Location: pulumi.String(region),
		Template: &cloudrun.ServiceTemplateArgs{
			Metadata: &cloudrun.ServiceTemplateMetadataArgs{
				Annotations: pulumi.StringMap{
					"autoscaling.knative.dev/minScale":         pulumi.String(crCfg.Require("minScale")),
					"autoscaling.knative.dev/maxScale":         pulumi.String(crCfg.Require("maxScale")),
					"run.googleapis.com/cpu":                   pulumi.String(crCfg.Require("cpu")),
					"run.googleapis.com/memory":                pulumi.String(crCfg.Require("memory")),
					"run.googleapis.com/cpu-throttling":        pulumi.String("true"),
					"run.googleapis.com/container-concurrency": pulumi.String(crCfg.Require("concurrency")),
					// ask sessions live in memory, keep a visitor on one instance
					"run.googleapis.com/sessionAffinity": pulumi.String("true"),
				},
			},
			Spec: &cloudrun.ServiceTemplateSpecArgs{
				ServiceAccountName: apiSA.Email,
				TimeoutSeconds:     pulumi.Int(timeout),
				Containers: cloudrun.ServiceTemplateSpecContainerArray{
					&cloudrun.ServiceTemplateSpecContainerArgs{
						Image: img.ImageName,
						Ports: cloudrun.ServiceTemplateSpecContainerPortArray{
							&cloudrun.ServiceTemplateSpecContainerPortArgs{
								ContainerPort: pulumi.Int(8080),
							},
						},
						Envs: envs,
					},
				},
			},
		},
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// allowPublicAccess opens the site to everyone; admin routes check their
// own Firebase tokens.
func allowPublicAccess(ctx *pulumi.Context, svc *cloudrun.Service, prov *gcp.Provider) error {
	gcpCfg := config.New(ctx, "gcp")

	_, err := cloudrun.NewIamMember(ctx, "publicInvoker", &cloudrun.IamMemberArgs{
		Service:  svc.Name,
		Location: pulumi.String(gcpCfg.Require("region")),
		Role:     pulumi.String("roles/run.invoker"),
		Member:   pulumi.String("allUsers"),
	},
		pulumi.Provider(prov),
	)
	return err
}
