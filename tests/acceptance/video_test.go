package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/slopengine/slopengine/internal/dto"
)

func (s *Suite) generateVideo(token string, req dto.GenerateVideoRequest) *dto.GenerateVideoResponse {
	body, _ := json.Marshal(req)

	httpReq, err := http.NewRequest(http.MethodPost, s.BaseURL+"/api/v1/videos/generate", bytes.NewBuffer(body))
	s.Require().NoError(err)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(httpReq)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode, "Generation should succeed")

	var genResp dto.GenerateVideoResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&genResp))
	return &genResp
}

func (s *Suite) TestGenerateVideo() {
	authResp := s.register("creator@example.com", "Password123")

	genResp := s.generateVideo(authResp.AccessToken, dto.GenerateVideoRequest{
		Prompt:     "a red fox running through snow",
		Duration:   1,
		Resolution: "64x48",
		Style:      "cinematic",
		FPS:        5,
	})

	s.NotEmpty(genResp.VideoID)
	s.Equal("completed", genResp.Status)
	s.Contains(genResp.Message, "Video generated successfully")
}

func (s *Suite) TestGenerateVideo_RequiresAuth() {
	body, _ := json.Marshal(dto.GenerateVideoRequest{Prompt: "a fox"})

	resp, err := http.Post(
		s.BaseURL+"/api/v1/videos/generate",
		"application/json",
		bytes.NewBuffer(body),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGenerateVideo_DurationCap() {
	authResp := s.register("creator@example.com", "Password123")

	body, _ := json.Marshal(dto.GenerateVideoRequest{
		Prompt:     "a fox",
		Duration:   600,
		Resolution: "64x48",
		FPS:        1,
	})

	req, err := http.NewRequest(http.MethodPost, s.BaseURL+"/api/v1/videos/generate", bytes.NewBuffer(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+authResp.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestListVideos() {
	authResp := s.register("creator@example.com", "Password123")

	s.generateVideo(authResp.AccessToken, dto.GenerateVideoRequest{
		Prompt:     "a red fox",
		Duration:   1,
		Resolution: "32x32",
		FPS:        2,
	})
	s.generateVideo(authResp.AccessToken, dto.GenerateVideoRequest{
		Prompt:     "a grey cat",
		Duration:   1,
		Resolution: "32x32",
		Style:      "anime",
		FPS:        2,
	})

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/api/v1/videos", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+authResp.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var videos []dto.VideoResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&videos))
	s.Require().Len(videos, 2)

	// Newest first
	s.Equal("a grey cat", videos[0].Prompt)
	s.Require().NotNil(videos[0].Style)
	s.Equal("anime", *videos[0].Style)
	s.Equal("a red fox", videos[1].Prompt)
	s.Nil(videos[1].Style)
}

func (s *Suite) TestDownloadVideo() {
	authResp := s.register("creator@example.com", "Password123")

	genResp := s.generateVideo(authResp.AccessToken, dto.GenerateVideoRequest{
		Prompt:     "a red fox",
		Duration:   1,
		Resolution: "32x32",
		FPS:        2,
	})

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/api/v1/videos/"+genResp.VideoID, nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+authResp.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.True(bytes.HasPrefix(data, []byte("GIF8")), "Clip should be a GIF")
}

func (s *Suite) TestDownloadVideo_OtherUsersVideo() {
	owner := s.register("owner@example.com", "Password123")
	other := s.register("other@example.com", "Password123")

	genResp := s.generateVideo(owner.AccessToken, dto.GenerateVideoRequest{
		Prompt:     "a red fox",
		Duration:   1,
		Resolution: "32x32",
		FPS:        2,
	})

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/api/v1/videos/"+genResp.VideoID, nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+other.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestDownloadVideo_NotFound() {
	authResp := s.register("creator@example.com", "Password123")

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/api/v1/videos/00000000-0000-0000-0000-000000000000", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+authResp.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}
