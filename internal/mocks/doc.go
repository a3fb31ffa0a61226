// Package mocks provides centralized testify mock implementations for testing.
//
// Each mock embeds mock.Mock and records calls, so tests configure behavior
// with On(...).Return(...) and verify with AssertExpectations:
//
//	users := new(mocks.UserStore)
//	users.On("GetByID", mock.Anything, userID).Return(user, nil)
//	defer users.AssertExpectations(t)
//
// Store mocks with a WithTx method return whatever the test registered for
// "WithTx", which is usually the mock itself:
//
//	users.On("WithTx", mock.Anything).Return(users)
//
// When adding a new mock to this package:
//  1. Add it to the file grouping the layer it belongs to
//  2. Add a compile-time interface assertion next to it
package mocks
