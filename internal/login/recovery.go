// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package login

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abcwallet/abc-core/internal/abcerr"
	"github.com/abcwallet/abc-core/internal/crypto"
)

// --- Recovery v1 (legacy) ---

func recoveryAnswersKey(answers []string) string {
	return strings.Join(answers, "\x00")
}

// RecoverySetup (legacy v1) derives a questionKeySnrp (keyed by username
// alone, so the question list is readable before any answer is supplied)
// and a recoveryKeySnrp (keyed by username+answers, so only the correct
// answers unwrap dataKey), encrypts questions into CarePackage.ERQ and
// dataKey into LoginPackage.RecoveryBox, and persists both.
func RecoverySetup(ctx context.Context, l *Login, questions, answers []string) error {
	if len(questions) != len(answers) {
		return abcerr.New(abcerr.Generic, "questions and answers must be the same length")
	}

	questionKeySNRP, err := crypto.NewClientSNRP(l.store.ctx.Calibration)
	if err != nil {
		return abcerr.Wrap(abcerr.ScryptError, err, "generating questionKeySnrp")
	}
	questionKey, err := questionKeySNRP.Hash([]byte(l.store.username))
	if err != nil {
		return abcerr.Wrap(abcerr.ScryptError, err, "deriving questionKey")
	}

	recoveryKeySNRP, err := crypto.NewClientSNRP(l.store.ctx.Calibration)
	if err != nil {
		return abcerr.Wrap(abcerr.ScryptError, err, "generating recoveryKeySnrp")
	}
	recoveryKey, err := recoveryKeySNRP.Hash([]byte(l.store.username + recoveryAnswersKey(answers)))
	if err != nil {
		return abcerr.Wrap(abcerr.ScryptError, err, "deriving recoveryKey")
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return abcerr.Wrap(abcerr.JsonError, err, "encoding recovery questions")
	}
	erq, err := crypto.EncryptBox(questionsJSON, questionKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting ERQ")
	}
	recoveryBox, err := crypto.EncryptBox(l.dataKey, recoveryKey)
	if err != nil {
		return abcerr.Wrap(abcerr.EncryptError, err, "encrypting recovery box")
	}

	care, err := loadCarePackage(l.paths)
	if err != nil {
		return err
	}
	care.QuestionKeySNRP = &questionKeySNRP
	care.RecoveryKeySNRP = &recoveryKeySNRP
	care.ERQ = &erq

	pkg, err := loadLoginPackage(l.paths)
	if err != nil {
		return err
	}
	pkg.RecoveryBox = &recoveryBox

	if err := l.server.UpdatePassword(ctx, LoginSet(l), care, pkg); err != nil {
		return err
	}
	if err := saveCarePackage(l.paths, care); err != nil {
		return err
	}
	return saveLoginPackage(l.paths, pkg)
}

// RecoveryQuestions (legacy v1) decrypts and returns the stored question
// list. It needs only the username, not the answers, since ERQ is
// encrypted under questionKeySnrp rather than recoveryKeySnrp.
func RecoveryQuestions(store *Store) ([]string, error) {
	paths, err := store.paths(false)
	if err != nil {
		return nil, err
	}
	care, err := loadCarePackage(paths)
	if err != nil {
		return nil, err
	}
	if care.ERQ == nil || care.QuestionKeySNRP == nil {
		return nil, abcerr.New(abcerr.NoRecoveryQuestions, "account has no recovery questions configured")
	}

	questionKey, err := care.QuestionKeySNRP.Hash([]byte(store.username))
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving questionKey")
	}

	plaintext, err := care.ERQ.Decrypt(questionKey)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.DecryptFailure, err, "decrypting ERQ")
	}

	var questions []string
	if err := json.Unmarshal(plaintext, &questions); err != nil {
		return nil, abcerr.Wrap(abcerr.JsonError, err, "decoding recovery questions")
	}
	return questions, nil
}

// LoginRecovery (legacy v1) authenticates store with the full ordered
// answer list.
func LoginRecovery(ctx context.Context, server ServerClient, store *Store, answers []string) (*Login, error) {
	paths, err := store.paths(false)
	if err != nil {
		return nil, err
	}
	care, err := loadCarePackage(paths)
	if err != nil {
		return nil, err
	}
	pkg, err := loadLoginPackage(paths)
	if err != nil {
		return nil, err
	}
	if care.RecoveryKeySNRP == nil || pkg.RecoveryBox == nil {
		return nil, abcerr.New(abcerr.NoRecoveryQuestions, "account has no recovery questions configured")
	}

	recoveryKey, err := care.RecoveryKeySNRP.Hash([]byte(store.username + recoveryAnswersKey(answers)))
	if err != nil {
		return nil, abcerr.Wrap(abcerr.ScryptError, err, "deriving recoveryKey")
	}

	dataKey, err := pkg.RecoveryBox.Decrypt(recoveryKey)
	if err != nil {
		return nil, abcerr.New(abcerr.InvalidAnswers, "incorrect recovery answers")
	}

	return CreateOffline(ctx, server, store, dataKey)
}

// --- Recovery v2 ---

// Recovery2Key returns l's locally persisted recovery2Key, as set up by a
// prior Recovery2Setup call. It performs no server round-trip.
func Recovery2Key(l *Login) ([]byte, error) {
	return loadRecovery2Key(l.paths)
}

// Recovery2Setup generates (or reuses) a recovery2Key, derives the
// per-answer authenticators, encrypts the questions under recovery2Key and
// dataKey under recovery2Key, and pushes the bundle to the server.
func Recovery2Setup(ctx context.Context, l *Login, questions, answers []string) ([]byte, error) {
	if len(questions) != len(answers) {
		return nil, abcerr.New(abcerr.Generic, "questions and answers must be the same length")
	}

	recovery2Key, err := loadRecovery2Key(l.paths)
	if err != nil {
		recovery2Key, err = crypto.RandomBytes(32)
		if err != nil {
			return nil, abcerr.Wrap(abcerr.SysError, err, "generating recovery2Key")
		}
		if err := saveRecovery2Key(l.paths, recovery2Key); err != nil {
			return nil, err
		}
	}

	recovery2ID := crypto.HMACSHA256(recovery2Key, []byte(l.store.username))

	recovery2Auth := make([][]byte, len(answers))
	for i, answer := range answers {
		recovery2Auth[i] = crypto.HMACSHA256(recovery2Key, []byte(answer))
	}

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.JsonError, err, "encoding recovery2 questions")
	}
	question2Box, err := crypto.EncryptBox(questionsJSON, recovery2Key)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.EncryptError, err, "encrypting question2Box")
	}
	recovery2Box, err := crypto.EncryptBox(l.dataKey, recovery2Key)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.EncryptError, err, "encrypting recovery2Box")
	}

	auth := withOTP(AuthJSON{UserID: l.store.UserID(), PasswordAuth: l.passwordAuth, Recovery2ID: recovery2ID, Recovery2Auth: recovery2Auth}, l.store.OtpKey())
	if err := l.server.UpdateRecovery2(ctx, auth, recovery2Box, questions, question2Box); err != nil {
		return nil, err
	}

	return recovery2Key, nil
}

// Recovery2Questions fetches and decrypts the question list for
// recovery2Key without providing any answers.
func Recovery2Questions(ctx context.Context, server ServerClient, store *Store, recovery2Key []byte) ([]string, error) {
	recovery2ID := crypto.HMACSHA256(recovery2Key, []byte(store.username))

	reply, err := server.Login(ctx, Recovery2Set(store, recovery2ID, nil))
	if err != nil {
		return nil, err
	}
	if reply.Question2Box == nil {
		return nil, abcerr.New(abcerr.NoRecoveryQuestions, "account has no recovery2 questions configured")
	}

	plaintext, err := reply.Question2Box.Decrypt(recovery2Key)
	if err != nil {
		return nil, abcerr.Wrap(abcerr.DecryptFailure, err, "decrypting question2Box")
	}

	var questions []string
	if err := json.Unmarshal(plaintext, &questions); err != nil {
		return nil, abcerr.Wrap(abcerr.JsonError, err, "decoding recovery2 questions")
	}
	return questions, nil
}

// LoginRecovery2 authenticates store with recovery2Key and the ordered
// answer list.
func LoginRecovery2(ctx context.Context, server ServerClient, store *Store, recovery2Key []byte, answers []string) (*Login, error) {
	recovery2ID := crypto.HMACSHA256(recovery2Key, []byte(store.username))

	recovery2Auth := make([][]byte, len(answers))
	for i, answer := range answers {
		recovery2Auth[i] = crypto.HMACSHA256(recovery2Key, []byte(answer))
	}

	reply, err := server.Login(ctx, Recovery2Set(store, recovery2ID, recovery2Auth))
	if err != nil {
		return nil, abcerr.New(abcerr.InvalidAnswers, "incorrect recovery answers")
	}
	if reply.Recovery2Box == nil {
		return nil, abcerr.New(abcerr.NoRecoveryQuestions, "account has no recovery2 login path")
	}

	dataKey, err := reply.Recovery2Box.Decrypt(recovery2Key)
	if err != nil {
		return nil, abcerr.New(abcerr.InvalidAnswers, "incorrect recovery answers")
	}

	paths, err := store.paths(true)
	if err != nil {
		return nil, err
	}
	if err := saveRecovery2Key(paths, recovery2Key); err != nil {
		return nil, err
	}

	return CreateOnline(ctx, server, store, dataKey, reply)
}
