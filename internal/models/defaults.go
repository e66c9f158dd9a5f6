package models

// DefaultContent returns the content the club site shipped with.
func DefaultContent() ClubContent {
	return ClubContent{
		ClubName:     "포항과메기라이더스",
		Tagline:      "자유와 안전, 그리고 열정으로 달리는 포항 최고의 바이크 크루",
		OpenChatURL:  "https://open.kakao.com/o/pgJRW5di",
		InstagramURL: "https://www.instagram.com/pohang_gwamegi_riders",
		MapEmbedURL:  "https://www.google.com/maps/d/embed?mid=1qiJWtAP_E66N5tqR6nhhluV1gMhf82g",
		Rules: []Rule{
			{ID: "1", Title: "상호 존중", Description: "나이, 기종 관계없이 존댓말 사용 및 예의 준수", Icon: "users"},
			{ID: "2", Title: "정치/종교 언급 금지", Description: "분쟁 소지가 있는 민감한 주제 언급 자제", Icon: "message"},
			{ID: "3", Title: "클린 채팅", Description: "욕설, 비방, 도배 금지 (위반 시 즉시 강퇴)", Icon: "shield"},
		},
		TourTips: []string{
			"집결 시간 10분 전 도착 엄수",
			"출발 전 연료 가득 채우기",
			"대열 주행 시 추월 절대 금지",
			"헬멧 및 안전 보호구 필수 착용",
		},
		Signals: []Signal{
			{ID: "s1", Title: "수신호: 정지", Description: "왼팔을 45도 아래로 펴고 손바닥을 뒤로 향하게 합니다."},
			{ID: "s2", Title: "수신호: 장애물 주의", Description: "발이나 손으로 노면의 위험 요소를 가리킵니다."},
		},
	}
}
