package publish

import (
	"github.com/theMomax/openmeteogram/config"
)

// Config paths
const (
	PathRepository    = "publish.path"
	PathBranch        = "publish.branch"
	PathAccount       = "publish.account"
	PathRemote        = "publish.repository"
	PathHost          = "publish.host"
	PathToken         = "publish.token"
	PathRemoteURL     = "publish.remote_url"
	PathOverwrite     = "publish.overwrite"
	PathAuthorName    = "publish.author.name"
	PathAuthorEmail   = "publish.author.email"
	PathCommitMessage = "publish.message"
	PathIgnore        = "publish.ignore"
)

// TokenEnv is the environment variable holding the access token.
const TokenEnv = "GITHUB_TOKEN"

func init() {
	flags := config.RootCtx.PersistentFlags()

	flags.String(PathRepository, "/home/sig07/pronosticos_numericos", "local repository to publish")
	config.Viper.BindPFlag(PathRepository, flags.Lookup(PathRepository))

	flags.String(PathBranch, "main", "branch to commit to and push")
	config.Viper.BindPFlag(PathBranch, flags.Lookup(PathBranch))

	flags.String(PathAccount, "pronosticosnumericos", "account owning the remote repository")
	config.Viper.BindPFlag(PathAccount, flags.Lookup(PathAccount))

	flags.String(PathRemote, "pronosticos_numericos", "name of the remote repository")
	config.Viper.BindPFlag(PathRemote, flags.Lookup(PathRemote))

	flags.String(PathHost, "github.com", "host of the remote repository")
	config.Viper.BindPFlag(PathHost, flags.Lookup(PathHost))

	flags.String(PathRemoteURL, "", "remote URL replacing the one built from account, host and repository")
	config.Viper.BindPFlag(PathRemoteURL, flags.Lookup(PathRemoteURL))

	flags.Bool(PathOverwrite, false, "push even if the remote branch moved since the fetch")
	config.Viper.BindPFlag(PathOverwrite, flags.Lookup(PathOverwrite))

	flags.String(PathAuthorName, "Julio (website_nuevo)", "snapshot author's name, unless git's global config has one")
	config.Viper.BindPFlag(PathAuthorName, flags.Lookup(PathAuthorName))

	flags.String(PathAuthorEmail, "you@example.com", "snapshot author's email, unless git's global config has one")
	config.Viper.BindPFlag(PathAuthorEmail, flags.Lookup(PathAuthorEmail))

	flags.String(PathCommitMessage, "Snapshot automático", "snapshot commit message")
	config.Viper.BindPFlag(PathCommitMessage, flags.Lookup(PathCommitMessage))

	flags.StringSlice(PathIgnore, []string{"prcp_matrix.json", "prcp/prcp_matrix.json"}, "patterns .gitignore has to contain")
	config.Viper.BindPFlag(PathIgnore, flags.Lookup(PathIgnore))

	// the token is never taken from a flag
	config.Viper.BindEnv(PathToken, TokenEnv)
}

// Configured returns the Config described by the application's
// configuration.
func Configured() Config {
	return Config{
		RepositoryPath: config.Viper.GetString(PathRepository),
		Branch:         config.Viper.GetString(PathBranch),
		Account:        config.Viper.GetString(PathAccount),
		Repository:     config.Viper.GetString(PathRemote),
		Host:           config.Viper.GetString(PathHost),
		Token:          config.Viper.GetString(PathToken),
		RemoteURL:      config.Viper.GetString(PathRemoteURL),
		Overwrite:      config.Viper.GetBool(PathOverwrite),
		AuthorName:     config.Viper.GetString(PathAuthorName),
		AuthorEmail:    config.Viper.GetString(PathAuthorEmail),
		CommitMessage:  config.Viper.GetString(PathCommitMessage),
		Ignore:         config.Viper.GetStringSlice(PathIgnore),
	}
}
