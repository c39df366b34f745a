package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/youthadmin/internal/service"
)

// UploadVisitationPhoto 심방 사진 업로드
func (a *API) UploadVisitationPhoto(c *gin.Context) {
	// 업로드 파일 확인
	file, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, []fieldError{{Loc: []string{"body", "file"}, Msg: "필수 항목입니다.", Type: "missing"}})
		return
	}

	// 확장자는 파일을 열기 전에 검사
	if _, err := service.ValidateExtension(file.Filename); err != nil {
		respondError(c, http.StatusBadRequest, "지원하지 않는 파일 형식입니다.")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "업로드 파일을 읽지 못했습니다.")
		return
	}
	defer src.Close()

	filename, err := a.media.SavePhoto(file.Filename, src)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedExtension) {
			respondError(c, http.StatusBadRequest, "지원하지 않는 파일 형식입니다.")
			return
		}
		respondError(c, http.StatusInternalServerError, "파일을 저장하지 못했습니다.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"filename": filename})
}
