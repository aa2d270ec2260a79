package marketing

import (
	apperrors "github.com/danieltjaarda/stylo-sub000/internal/pkg/errors"
)

var (
	// errProfileIDMissing 프로필 생성/업서트 응답에 프로필 ID가 없을 때 반환되는 에러입니다.
	// 폴백 체인에서 복구 가능한 실패로 취급되어 다음 전략으로 넘어갑니다.
	errProfileIDMissing = apperrors.New(apperrors.ParsingFailed, "마케팅 API 응답에 프로필 ID가 없습니다")

	// errProfileNotFound 이메일 검색 결과가 비어있을 때 반환되는 에러입니다.
	// 폴백 체인에서 복구 가능한 실패로 취급됩니다.
	errProfileNotFound = apperrors.New(apperrors.NotFound, "이메일로 등록된 마케팅 프로필을 찾을 수 없습니다")
)
