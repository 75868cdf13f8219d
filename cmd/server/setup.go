// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"log"
	"os"
	"text/template"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/agents"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/services"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/workflow"
)

// StateManager holds the shared components for the application.
type StateManager struct {
	config       *cloud.Config
	cloud        *cloud.ServiceClients
	coordinator  *agents.Coordinator
	assembly     *workflow.VideoAssemblyWorkflow
	runService   *services.RunService
	shareService *services.ShareService
}

var state = &StateManager{}

func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup os environment: %v\n", err)
		}
		// Create a default cloud config
		config := cloud.NewConfig()
		// Load it from the TOML files
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState builds every shared component the server needs: the cloud
// clients, the run-history and share services, the assembly workflow, the
// generation agents, and the Pub/Sub listeners.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	state.runService = &services.RunService{
		BigqueryClient: cloudClients.BigQueryClient,
		DatasetName:    config.BigQueryDataSource.DatasetName,
		RunTable:       config.BigQueryDataSource.RunTable,
	}

	state.shareService = &services.ShareService{
		StorageClient: cloudClients.StorageClient,
		SignerEmail:   config.Application.SignerServiceAccountEmail,
	}

	// The assembly workflow serves both the synchronous API route and the
	// Pub/Sub trigger. Passing a nil processor selects the ffmpeg binary
	// from the PATH.
	state.assembly = workflow.NewVideoAssemblyWorkflow(config, cloudClients, nil)

	storyTemplate, err := template.New("story").Parse(config.PromptTemplates.StoryPrompt)
	if err != nil {
		log.Fatalf("invalid story prompt template: %v\n", err)
	}
	storyAgent := agents.NewStoryAgent(cloudClients.AgentModels["creative"], storyTemplate)
	imageAgent := agents.NewImageAgent(cloudClients.GenAIClient, config.GenerationModels["imagen"])
	videoAgent := agents.NewVideoAgent(cloudClients.GenAIClient, config.GenerationModels["veo"])

	lyriaClient, err := cloud.NewLyriaClient(ctx,
		config.Application.GoogleProjectId,
		config.Application.GoogleLocation,
		config.GenerationModels["lyria"].Model)
	if err != nil {
		panic(err)
	}
	musicAgent := agents.NewMusicAgent(lyriaClient)

	ttsClient, err := cloud.NewTextToSpeechClient(ctx)
	if err != nil {
		panic(err)
	}
	speechAgent := agents.NewSpeechAgent(ttsClient, config.GenerationModels["tts"])

	state.coordinator = agents.NewCoordinator(
		storyAgent,
		imageAgent,
		videoAgent,
		musicAgent,
		speechAgent,
		state.assembly,
		cloudClients.ObjectStore,
		config.Storage.OutputBucket,
		config.PromptTemplates)

	SetupListeners(config, cloudClients, ctx)
}
